// Package portfolio holds the resume sections revealed by special orbs.
package portfolio

// Link is an outbound reference inside a section.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Section is one popup's worth of content. The game only cares how many there are.
type Section struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
	Links []Link   `json:"links,omitempty"`
}

// Owner and contact details shown on the menu and hire-me screens.
const (
	Owner      = "SOURAMOY SHEE"
	ContactURL = "https://about.souramoy.tech/"
)

// Sections in reveal order.
var Sections = []Section{
	{
		ID:    "intro",
		Title: "PLAYER_ONE",
		Lines: []string{
			Owner,
			"Computer Science Student at AOT Hooghly | Tech Enthusiast | Aspiring Developer",
			"Passionate about solving code mysteries & Detective Movies Enthusiast. Eager to explore and contribute to the evolving tech landscape.",
			"EXP: 5+ YEARS",
			"LOC: West Bengal, India",
		},
	},
	{
		ID:    "skills",
		Title: "SKILL_TREE",
		Lines: []string{
			"Development:",
			"  React.js, Node.js, Fastn",
			"  Android Studio (Java/XML)",
			"  PHP & MySQL",
			"  Mobile App Development",
			"Concepts:",
			"  AI & Machine Learning",
			"  OOP & Software Design",
			"  Team Leadership",
			"  System Architecture",
		},
	},
	{
		ID:    "experience",
		Title: "CAMPAIGN_HISTORY",
		Lines: []string{
			"Sturtle Security Pvt Ltd. (Nov 23 - Mar 24)",
			"  Web Dev Officer & Programmer Intern",
			"  Built an app reading PDFs/images as datasets for AI/OCR Q&A.",
			"Ardent Computech (Nov 23 - Dec 23)",
			"  Android App Developer Intern",
			"  Developed an online food delivery mobile app using Java & Android Studio.",
			"DH Technologies (Jan 23 - Feb 23)",
			"  Backend Developer Intern",
			"  Backend for a food delivery web app using PHP & MySQL.",
			"Other Roles: Back-end Lead @ InnovateX, Technical Team Member @ IEI Students' Chapter.",
		},
	},
	{
		ID:    "projects",
		Title: "MISSION_LOG",
		Lines: []string{"Top classified projects retrieved from GitHub:"},
		Links: []Link{
			{Label: "Hotel Grand Hotel", URL: "https://github.com/Souramoy/hotel_Grand_hotel", Note: "Full stack hospitality management system."},
			{Label: "Farm Front", URL: "https://github.com/Souramoy/farm-front", Note: "Agricultural tech solution frontend."},
			{Label: "Restaurant BellaVista", URL: "https://github.com/Souramoy/Restaurant_BellaVista", Note: "Restaurant website application."},
			{Label: "App Teacher", URL: "https://github.com/Souramoy/app-teacher", Note: "Educational utility application."},
			{Label: "Lodge Digital Demo", URL: "https://github.com/Souramoy/lodgedigital_demo_2", Note: "Lodge management digital demonstration."},
			{Label: "Junior Project", URL: "https://github.com/Souramoy/junior", Note: "Development resources and junior level apps."},
			{Label: "SCCSE Code", URL: "https://github.com/Souramoy/sccsecode", Note: "Coding repository & utilities."},
		},
	},
	{
		ID:    "contact",
		Title: "TRANSMISSION",
		Lines: []string{"ESTABLISH UPLINK?", ">> END OF TRANSMISSION <<"},
		Links: []Link{
			{Label: "OFFICIAL WEBSITE", URL: ContactURL},
			{Label: "GITHUB", URL: "https://github.com/Souramoy"},
			{Label: "INSTAGRAM (@soura_shee)", URL: "https://instagram.com/soura_shee"},
			{Label: "PHONE", Note: "+91 6294516326"},
		},
	},
}

// Count is the number of sections.
func Count() int { return len(Sections) }

// At returns the section for a popup index, wrapping out-of-range indexes.
func At(i int) Section {
	n := len(Sections)
	return Sections[((i%n)+n)%n]
}

// Footer is the popup's closing line.
func Footer(last bool) string {
	if last {
		return "ALL DATA RECOVERED"
	}
	return "PRESS CLOSE TO RESUME MISSION"
}
