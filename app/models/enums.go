package models

// PaymentMethod defines the accepted ways a fee payment can be made.
// Values are stored lowercase; input is normalized before persistence.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodCard         PaymentMethod = "card"
	MethodOnline       PaymentMethod = "online"
)

// ValidPaymentMethods lists every accepted payment method.
var ValidPaymentMethods = []PaymentMethod{
	MethodCash,
	MethodBankTransfer,
	MethodCheque,
	MethodCard,
	MethodOnline,
}

// IsValid reports whether the method is one of the accepted values.
func (m PaymentMethod) IsValid() bool {
	for _, v := range ValidPaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// RoleName defines the application roles that scope dashboard access.
type RoleName string

const (
	RoleAdmin      RoleName = "admin"
	RoleHeadmaster RoleName = "headmaster"
	RoleTeacher    RoleName = "teacher"
	RoleParent     RoleName = "parent"
	RoleAccountant RoleName = "accountant"
)

// PaymentFrequency defines how often a fee type recurs.
type PaymentFrequency string

const (
	FrequencyOnce     PaymentFrequency = "once"
	FrequencyPerTerm  PaymentFrequency = "per_term"
	FrequencyPerYear  PaymentFrequency = "per_year"
	FrequencyOnDemand PaymentFrequency = "on_demand"
)
