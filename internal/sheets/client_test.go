package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'Lead'", quoteSheet("Lead"))
	assert.Equal(t, "'Mis Clientes'", quoteSheet("Mis Clientes"))
	assert.Equal(t, "'Juan''s'", quoteSheet("Juan's"))
}

func TestRowRange(t *testing.T) {
	assert.Equal(t, "'Calificaciones'!5:5", rowRange("Calificaciones", 5))
	assert.Equal(t, "'Lead'!1:1", rowRange("Lead", 1))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "hola", cellString("hola"))
	assert.Equal(t, "5", cellString(5))
	assert.Equal(t, "4.5", cellString(4.5))
}

func TestToCells(t *testing.T) {
	cells := toCells([]string{"a", "b"})
	assert.Equal(t, []interface{}{"a", "b"}, cells)
}
