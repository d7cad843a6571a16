package email

// Template names a file under templates/emails without its extension.
type Template string

const (
	// TemplateOrderCreated corresponds to templates/emails/order_created.html
	TemplateOrderCreated Template = "order_created"
)

// templateDir is resolved relative to the working directory, like the
// static docs.
const templateDir = "templates/emails"
