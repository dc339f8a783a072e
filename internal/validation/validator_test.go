package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type expenseForm struct {
	Category string `json:"category" validate:"required,expensecategory"`
	Amount   string `json:"amount" validate:"required,money_amount"`
}

func TestStruct_AcceptsValidInput(t *testing.T) {
	err := GetValidator().Struct(expenseForm{Category: "GROCERIES", Amount: "42.50"})
	assert.NoError(t, err)
}

func TestStruct_RejectsUnknownCategory(t *testing.T) {
	err := GetValidator().Struct(expenseForm{Category: "SNACKS", Amount: "42.50"})
	assert.Error(t, err)
}

func TestMoneyAmountRule(t *testing.T) {
	cases := []struct {
		amount string
		valid  bool
	}{
		{"0", true},
		{"19.99", true},
		{"-1.00", false},
		{"1.999", false},
		{"abc", false},
		{"", false},
	}

	for _, tc := range cases {
		err := GetValidator().Struct(struct {
			Amount string `validate:"money_amount"`
		}{Amount: tc.amount})
		if tc.valid {
			assert.NoError(t, err, tc.amount)
		} else {
			assert.Error(t, err, tc.amount)
		}
	}
}

func TestPositiveMoneyRule(t *testing.T) {
	cases := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"100", true},
		{"0", false},
		{"-5", false},
	}

	for _, tc := range cases {
		err := GetValidator().Struct(struct {
			Amount string `validate:"positive_money"`
		}{Amount: tc.amount})
		if tc.valid {
			assert.NoError(t, err, tc.amount)
		} else {
			assert.Error(t, err, tc.amount)
		}
	}
}
