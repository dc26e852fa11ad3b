package dto

type PlaceOrderInput struct {
	CartLineIDs   []string
	ReceiverName  string
	Address       string
	AddressDetail string
	PostalCode    string
	Phone         string
	Requirement   string
	PayType       string
}

type CancelInput struct {
	Reason      string
	Description string // optional for cancels
}

type ReturnRequestInput struct {
	Reason      string
	Description string // required for returns
}
