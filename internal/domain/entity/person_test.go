package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"traveldesk-service/internal/domain/entity"
)

func TestValidPersonType(t *testing.T) {
	assert.True(t, entity.ValidPersonType(entity.PersonTypeEmployee))
	assert.True(t, entity.ValidPersonType(entity.PersonTypeStakeholder))
	assert.True(t, entity.ValidPersonType(entity.PersonTypeEmployer))
	assert.True(t, entity.ValidPersonType(entity.PersonTypeTaskHelper))
	assert.False(t, entity.ValidPersonType("CONTRACTOR"))
	assert.False(t, entity.ValidPersonType("employee"), "person types are case sensitive")
}

func TestStakeholderContactAssemblesName(t *testing.T) {
	s := &entity.Stakeholder{ID: 3, FirstName: "Siti", LastName: "Nurhaliza", Email: "siti@example.com"}

	c := s.Contact()

	assert.Equal(t, "Siti Nurhaliza", c.DisplayName)
	assert.Equal(t, uint(3), c.ID)
}

func TestStakeholderContactTrimsMissingParts(t *testing.T) {
	s := &entity.Stakeholder{FirstName: "Siti"}

	assert.Equal(t, "Siti", s.Contact().DisplayName)
}

func TestEmployerContactUsesCompanyFields(t *testing.T) {
	e := &entity.Employer{ID: 8, CompanyName: "PT Nusantara", PrimaryEmail: "office@nusantara.co.id", PrimaryPhone: "0215550101"}

	c := e.Contact()

	assert.Equal(t, "PT Nusantara", c.DisplayName)
	assert.Equal(t, "office@nusantara.co.id", c.Email)
	assert.Equal(t, "0215550101", c.Phone)
}

func TestValidChannel(t *testing.T) {
	assert.True(t, entity.ValidChannel(entity.ChannelEmail))
	assert.True(t, entity.ValidChannel(entity.ChannelWhatsapp))
	assert.True(t, entity.ValidChannel(entity.ChannelBoth))
	assert.False(t, entity.ValidChannel("SMS"))
	assert.False(t, entity.ValidChannel(""))
}
