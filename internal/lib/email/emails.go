package email

import "fmt"

// OrderNotification is what the shop owner is told about a new order.
type OrderNotification struct {
	OrderID       int64
	Total         string
	ItemCount     int
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Comment       string
	Status        string
}

// SendOrderNotification emails the shop owner about a new order.
func (c *Client) SendOrderNotification(to string, n OrderNotification) error {
	data := map[string]string{
		"OrderID":       fmt.Sprintf("%d", n.OrderID),
		"Total":         n.Total,
		"ItemCount":     fmt.Sprintf("%d", n.ItemCount),
		"CustomerName":  n.CustomerName,
		"CustomerPhone": n.CustomerPhone,
		"CustomerEmail": n.CustomerEmail,
		"Address":       n.Address,
		"Comment":       n.Comment,
		"Status":        n.Status,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New order #%d", n.OrderID),
		TemplateOrderCreated,
		data,
	)
}
