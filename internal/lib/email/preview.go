package email

// PreviewData contains sample template data for local preview/testing.
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Username": "kringe_fan",
		"SiteURL":  "http://localhost:8080",
	},
}
