package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiredNicknameMissing(t *testing.T) {
	problems := ValidateDeliveryInfo(DeliveryInfo{}, FieldSet{Nickname: true})
	assert.Contains(t, problems, "nickname")
	assert.NotContains(t, problems, "discord")
}

func TestValidateRequiredNicknameTooShort(t *testing.T) {
	problems := ValidateDeliveryInfo(DeliveryInfo{Nickname: "ab"}, FieldSet{Nickname: true})
	assert.Equal(t, "Nickname must be at least 3 characters.", problems["nickname"])
}

func TestValidateRequiredDiscordMissing(t *testing.T) {
	problems := ValidateDeliveryInfo(DeliveryInfo{}, FieldSet{Discord: true})
	assert.Equal(t, "Discord username must be at least 3 characters.", problems["discord"])
}

func TestValidateBothRequired(t *testing.T) {
	problems := ValidateDeliveryInfo(DeliveryInfo{Nickname: "x", Discord: ""}, FieldSet{Nickname: true, Discord: true})
	assert.Len(t, problems, 2)
}

func TestValidateOptionalFieldsUnconstrained(t *testing.T) {
	// Nothing required: any payload passes, including short or empty values.
	problems := ValidateDeliveryInfo(DeliveryInfo{Nickname: "a", Discord: ""}, FieldSet{})
	assert.Empty(t, problems)
}

func TestValidateSatisfiedFields(t *testing.T) {
	info := DeliveryInfo{Nickname: "AcePlayer", Discord: "ace#1234"}
	problems := ValidateDeliveryInfo(info, FieldSet{Nickname: true, Discord: true})
	assert.Empty(t, problems)
}
