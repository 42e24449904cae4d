package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample_Fields(t *testing.T) {
	u := Sample()

	assert.Equal(t, "1", u.ID)
	assert.Equal(t, "john doe", u.Name)
	assert.Equal(t, "john.doe@example.com", u.Email)
	assert.Equal(t, "password", u.Password)
}

func TestSample_ReturnsIndependentValues(t *testing.T) {
	first := Sample()
	first.Name = "changed"

	second := Sample()
	assert.Equal(t, "john doe", second.Name)
	assert.NotEqual(t, first, second)
}
