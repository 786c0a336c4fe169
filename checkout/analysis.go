package checkout

import "github.com/acestore/acestore-api/cart"

// ServiceCategory is the reserved category for automation services. Anything
// else in the catalog is a deliverable in-game item.
const ServiceCategory = "bots"

// Analysis classifies the cart's contents to decide which delivery fields
// checkout must collect.
type Analysis struct {
	ContainsServiceItem     bool
	ContainsDeliverableItem bool
}

func Analyze(items []cart.LineItem) Analysis {
	var a Analysis
	for _, item := range items {
		if item.Product.Category == ServiceCategory {
			a.ContainsServiceItem = true
		} else {
			a.ContainsDeliverableItem = true
		}
	}
	return a
}

// FieldSet marks which delivery-info fields are mandatory. A nickname is
// needed to deliver in-game items; a discord handle is needed to hand over
// an automation service.
type FieldSet struct {
	Nickname bool
	Discord  bool
}

func RequiredFields(a Analysis) FieldSet {
	return FieldSet{
		Nickname: a.ContainsDeliverableItem,
		Discord:  a.ContainsServiceItem,
	}
}
