package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		id       string
		raw      string
		expected Email
	}{
		{id: "lowercase", raw: "test@test.test", expected: Email("test@test.test")},
		{id: "mixed-case", raw: "Test@Test.Test", expected: Email("test@test.test")},
		{id: "whitespace", raw: "  test@test.test\n", expected: Email("test@test.test")},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert.Equal(t, testcase.expected, NewEmail(testcase.raw))
		})
	}
}

func TestOptionalString(t *testing.T) {
	present := NewOptional(42, true)
	absent := NewOptional(0, false)
	assert.Equal(t, "[42]", present.String())
	assert.Equal(t, "[-]", absent.String())
}
