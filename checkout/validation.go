package checkout

import "github.com/go-playground/validator/v10"

// DeliveryInfo is the checkout form payload. Which fields are mandatory
// depends on the cart analysis, not on the struct.
type DeliveryInfo struct {
	Nickname string `json:"nickname"`
	Discord  string `json:"discord"`
}

var validate = validator.New()

const requiredRule = "required,min=3"

// ValidateDeliveryInfo checks the payload against the FieldSet and returns
// per-field messages. Optional fields are unconstrained. An empty map means
// the payload is valid.
func ValidateDeliveryInfo(info DeliveryInfo, fields FieldSet) map[string]string {
	problems := make(map[string]string)

	if fields.Nickname {
		if err := validate.Var(info.Nickname, requiredRule); err != nil {
			problems["nickname"] = "Nickname must be at least 3 characters."
		}
	}
	if fields.Discord {
		if err := validate.Var(info.Discord, requiredRule); err != nil {
			problems["discord"] = "Discord username must be at least 3 characters."
		}
	}

	return problems
}
