package wsauth

// Scopes is the list of permissions requested during setup.
// It is also the fallback written to a Record
// when the provider does not echo back the scopes it granted.
var Scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",

	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events",

	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/gmail.settings.basic",

	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/drive.file",

	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/documents.readonly",

	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/spreadsheets.readonly",

	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/presentations.readonly",

	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.body.readonly",
	"https://www.googleapis.com/auth/forms.responses.readonly",

	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/tasks.readonly",

	"https://www.googleapis.com/auth/contacts",
	"https://www.googleapis.com/auth/contacts.readonly",

	"https://www.googleapis.com/auth/chat.messages",
	"https://www.googleapis.com/auth/chat.messages.readonly",
	"https://www.googleapis.com/auth/chat.spaces",

	"https://www.googleapis.com/auth/cse",

	"https://www.googleapis.com/auth/script.projects",
	"https://www.googleapis.com/auth/script.projects.readonly",
	"https://www.googleapis.com/auth/script.deployments",
	"https://www.googleapis.com/auth/script.deployments.readonly",
	"https://www.googleapis.com/auth/script.processes",
	"https://www.googleapis.com/auth/script.metrics",
}
