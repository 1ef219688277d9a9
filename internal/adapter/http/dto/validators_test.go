package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeStruct_TrimsAndDropsControlChars(t *testing.T) {
	req := CreateStaticPixRequest{
		PayerName:    "  Maria\tSilva  ",
		ReceiverName: "Joao\x00 & Filhos\n",
		Description:  " Aluguel ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "MariaSilva", req.PayerName)
	assert.Equal(t, "Joao & Filhos", req.ReceiverName, "no HTML escaping")
	assert.Equal(t, "Aluguel", req.Description)
}

func TestSanitizeStruct_PointerFields(t *testing.T) {
	s := "  x  "
	v := struct {
		A *string
		B *string
	}{A: &s}
	SanitizeStruct(&v)

	assert.Equal(t, "x", *v.A)
	assert.Nil(t, v.B)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	req := LoginRequest{Email: "  a@b.c  "}
	SanitizeStruct(req)
	assert.Equal(t, "  a@b.c  ", req.Email)
}

func TestCreateStaticPixRequest_Validation(t *testing.T) {
	valid := func() CreateStaticPixRequest {
		return CreateStaticPixRequest{
			ReferenceID:  "REQ-001",
			PayerName:    "Maria",
			PayerEmail:   "maria@example.com",
			PayerCPF:     "123.456.789-01",
			ReceiverName: "Joao",
			ReceiverCPF:  "12.345.678/0001-95",
			Amount:       2550,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*CreateStaticPixRequest)
		wantErr bool
	}{
		{"valid", func(*CreateStaticPixRequest) {}, false},
		{"digits only cpf", func(r *CreateStaticPixRequest) { r.PayerCPF = "12345678901" }, false},
		{"no documents", func(r *CreateStaticPixRequest) { r.PayerCPF, r.ReceiverCPF = "", "" }, false},
		{"no reference", func(r *CreateStaticPixRequest) { r.ReferenceID = "" }, false},
		{"zero amount", func(r *CreateStaticPixRequest) { r.Amount = 0 }, true},
		{"negative amount", func(r *CreateStaticPixRequest) { r.Amount = -1 }, true},
		{"bad email", func(r *CreateStaticPixRequest) { r.PayerEmail = "maria" }, true},
		{"short cpf", func(r *CreateStaticPixRequest) { r.PayerCPF = "123" }, true},
		{"unsafe reference", func(r *CreateStaticPixRequest) { r.ReferenceID = "a b" }, true},
		{"missing receiver", func(r *CreateStaticPixRequest) { r.ReceiverName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateStatusRequest_Validation(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateStatusRequest{Status: "PAID"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateStatusRequest{Status: "CANCELLED"}))
	assert.Error(t, binding.Validator.ValidateStruct(&UpdateStatusRequest{Status: "PENDING"}))
}
