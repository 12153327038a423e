package order

import "slices"

// Draft field names, as used by the order form.
const (
	FieldID               = "id"
	FieldBookTitles       = "bookTitles"
	FieldQuantity         = "quantity"
	FieldCreationDate     = "creationDate"
	FieldDeliveryDate     = "deliveryDate"
	FieldDeliveryService  = "deliveryService"
	FieldDeliveryMethod   = "deliveryMethod"
	FieldCustomerName     = "customerName"
	FieldCustomerContacts = "customerContacts"
)

// Fields lists every draft field in form order.
var Fields = []string{
	FieldID,
	FieldBookTitles,
	FieldQuantity,
	FieldCreationDate,
	FieldDeliveryDate,
	FieldDeliveryService,
	FieldDeliveryMethod,
	FieldCustomerName,
	FieldCustomerContacts,
}

// Suggested choices offered by the form. Neither list is enforced.
var (
	DeliveryServices = []string{"UkrPoshta", "Nova Poshta"}
	DeliveryMethods  = []string{"To post office", "To address"}
)

// CommitDraft returns the draft unchanged as the new order, together with
// the empty order that replaces the draft.
func CommitDraft(draft Order) (Order, Order) {
	return draft, Order{}
}

// UpdateDraftField returns a copy of draft with field set from raw.
// The id and quantity fields are parsed with ParseNumber. Unknown field
// names leave the draft unchanged.
func UpdateDraftField(draft Order, field, raw string) Order {
	switch field {
	case FieldID:
		draft.ID = ParseNumber(raw)
	case FieldBookTitles:
		draft.BookTitles = raw
	case FieldQuantity:
		draft.Quantity = ParseNumber(raw)
	case FieldCreationDate:
		draft.CreationDate = raw
	case FieldDeliveryDate:
		draft.DeliveryDate = raw
	case FieldDeliveryService:
		draft.DeliveryService = raw
	case FieldDeliveryMethod:
		draft.DeliveryMethod = raw
	case FieldCustomerName:
		draft.CustomerName = raw
	case FieldCustomerContacts:
		draft.CustomerContacts = raw
	}
	return draft
}

// IsField reports whether name is a known draft field.
func IsField(name string) bool {
	return slices.Contains(Fields, name)
}
