package domain

const (
	// VisitorMediaTypeID is the only permit media type the portal issues.
	VisitorMediaTypeID = 21

	// VisitorMediaTypeName is shown in the login discovery document.
	VisitorMediaTypeName = "Bezoekersvergunning"
)

// PermitMediaType names a kind of permit media in the login discovery
// document.
type PermitMediaType struct {
	ID   int
	Name string
}

// Permit is a zonal visitor parking permit. Every account holds exactly one.
type Permit struct {
	ID        string
	AccountID string
	ZonalCode string
	UnitPrice float64 // balance cost of one reservation unit
}

// PermitMedia is the pass the permit's balance and reservations hang off.
type PermitMedia struct {
	ID       string
	PermitID string
	TypeID   int
	Code     string
	Balance  float64
}
