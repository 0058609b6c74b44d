package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func validBrew() dto.CreateBrewRequest {
	return dto.CreateBrewRequest{
		BeanID:    "11111111-1111-1111-1111-111111111111",
		GrinderID: "22222222-2222-2222-2222-222222222222",
		BrewerID:  "33333333-3333-3333-3333-333333333333",
		Date:      "2024-05-01",
		Dose:      ptr(18.0),
		Yield:     ptr(36.0),
		BrewTime:  ptr(28),
	}
}

func TestValidate_BrewValido(t *testing.T) {
	assert.NoError(t, validation.New().Validate(validBrew()))
}

func TestValidate_YieldCeroEsValido(t *testing.T) {
	in := validBrew()
	in.Yield = ptr(0.0)
	assert.NoError(t, validation.New().Validate(in))
}

func TestValidate_PrimerErrorEnOrdenDelFormulario(t *testing.T) {
	in := validBrew()
	in.BeanID = ""
	in.Dose = nil

	err := validation.New().Validate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "bean_id es obligatorio", err.Error())

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "dose", verr.Fields[1].Field)
}

func TestValidate_DoseCeroRechazada(t *testing.T) {
	in := validBrew()
	in.Dose = ptr(0.0)
	err := validation.New().Validate(in)
	require.Error(t, err)
	assert.Equal(t, "dose debe ser mayor que 0", err.Error())
}

func TestValidate_Bean(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateBeanRequest)
		wantErr string
	}{
		{"completo", func(*dto.CreateBeanRequest) {}, ""},
		{"sin nombre", func(b *dto.CreateBeanRequest) { b.Name = "" }, "name es obligatorio"},
		{"nombre en blanco", func(b *dto.CreateBeanRequest) { b.Name = "   " }, "name es obligatorio"},
		{"país en blanco", func(b *dto.CreateBeanRequest) { b.Country = " \t" }, "country es obligatorio"},
		{"tueste inválido", func(b *dto.CreateBeanRequest) { b.RoastType = "cinnamon" }, "roast_type debe ser uno de: light medium-light medium medium-dark dark"},
		{"fecha mal formada", func(b *dto.CreateBeanRequest) { b.RoastDate = ptr("01/05/2024") }, "roast_date debe ser una fecha con formato 2006-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := dto.CreateBeanRequest{
				Name: "Yirgacheffe", Country: "Ethiopia", Region: "Gedeo", Farm: "Konga",
				Altitude: "1900m", RoastType: "light",
			}
			tt.mutate(&in)
			err := validation.New().Validate(in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidate_AdjuntoAnidado(t *testing.T) {
	in := dto.CreateRoasteryRequest{
		Name: "Onyx",
		Logo: &dto.AttachmentInput{Filename: "logo.png", ContentType: "image/png", Data: "%%%"},
	}
	err := validation.New().Validate(in)
	require.Error(t, err)
	assert.Equal(t, "logo.data debe estar codificado en base64", err.Error())
}

func TestValidate_TextosEnBlanco(t *testing.T) {
	v := validation.New()
	blank := ptr("   ")

	tests := []struct {
		name string
		in   any
	}{
		{"crear grinder", dto.CreateGrinderRequest{Name: "   ", BurrSize: "63mm", BurrType: "conical"}},
		{"crear brewer", dto.CreateBrewerRequest{Name: "V60", Type: "  "}},
		{"crear roastery", dto.CreateRoasteryRequest{Name: "\t"}},
		{"editar grinder", dto.UpdateGrinderRequest{Name: blank}},
		{"editar brewer", dto.UpdateBrewerRequest{Name: blank}},
		{"editar roastery", dto.UpdateRoasteryRequest{Name: blank}},
		{"editar bean", dto.UpdateBeanRequest{Farm: blank}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), "es obligatorio")
		})
	}

	assert.NoError(t, v.Validate(dto.UpdateGrinderRequest{Name: ptr(" Niche ")}))
	assert.NoError(t, v.Validate(dto.UpdateGrinderRequest{}))
}
