// Package events carries named events between components.
//
//	off, _ := events.Default().On(func(e events.Event) {
//	    fmt.Println(e.Sender, "added", e.Payload)
//	}, "cart:add")
//	defer off()
//
//	events.Default().Trigger("cart:add", item, "ProductCard")
//
// TriggerAsync fires an event once its payload has been produced in the
// background.
package events
