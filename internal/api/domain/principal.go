package domain

// Kind names the collection a principal lives in.
type Kind string

const (
	KindUser     Kind = "user"
	KindAdmin    Kind = "admin"
	KindCustomer Kind = "customer"
)

func (k Kind) String() string { return string(k) }

func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindAdmin, KindCustomer:
		return true
	}
	return false
}

// Tier is an ordered list of the collections a guard or login searches.
type Tier struct {
	Name  string
	Kinds []Kind
}

var (
	// TierUser accepts platform users and admins, users first.
	TierUser = Tier{Name: "user", Kinds: []Kind{KindUser, KindAdmin}}
	// TierAdmin accepts admins only.
	TierAdmin = Tier{Name: "admin", Kinds: []Kind{KindAdmin}}
	// TierCustomer accepts customers only.
	TierCustomer = Tier{Name: "customer", Kinds: []Kind{KindCustomer}}
)

// Principal is the credential view shared by every collection.
type Principal struct {
	ID           string
	Kind         Kind
	Email        string
	PasswordHash string

	// MFASecret is only set for admins who completed enrolment.
	MFASecret *string
}
