package condition

import (
	"fmt"
	"time"
)

// Context carries the order attributes a predicate may reference. It is
// read-only during evaluation; the timestamp is fixed when the evaluation
// request enters the engine so repeated evaluations agree.
type Context struct {
	Subtotal        int64
	ItemCount       int
	Categories      []string
	CustomerSegment string
	FirstOrder      bool
	Now             time.Time
}

var dayNames = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func (c *Context) intField(name string) (int64, error) {
	switch name {
	case "subtotal":
		return c.Subtotal, nil
	case "item_count":
		return int64(c.ItemCount), nil
	case "hour":
		return int64(c.Now.Hour()), nil
	}
	return 0, fmt.Errorf("unknown int field %q", name)
}

func (c *Context) stringField(name string) (string, error) {
	switch name {
	case "customer_segment":
		return c.CustomerSegment, nil
	case "day_of_week":
		return dayNames[c.Now.Weekday()], nil
	}
	return "", fmt.Errorf("unknown string field %q", name)
}

func (c *Context) boolField(name string) (bool, error) {
	if name == "first_order" {
		return c.FirstOrder, nil
	}
	return false, fmt.Errorf("unknown bool field %q", name)
}
