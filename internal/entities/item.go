package entities

import "fmt"

// Item is a purchasable shop entry. It shares the persistence layer with
// players but takes no part in the activity state machine.
type Item struct {
	ID   int64
	Name string
	Cost float64
}

func (i *Item) String() string {
	return fmt.Sprintf("%s (%.2f)", i.Name, i.Cost)
}
