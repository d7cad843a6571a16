package email

// PreviewData holds sample template data for rendering templates locally:
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateOrderCreated: {
		"OrderID":       "1042",
		"Total":         "259.90",
		"ItemCount":     "3",
		"CustomerName":  "Jane Doe",
		"CustomerPhone": "+1 555 0100",
		"CustomerEmail": "jane@example.com",
		"Address":       "221B Baker Street",
		"Comment":       "Please call before delivery",
		"Status":        "new",
	},
}

// Preview renders a template with its sample data.
func Preview(templateName Template) (string, error) {
	return Render(templateName, PreviewData[templateName])
}
