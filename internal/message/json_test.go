package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type user struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func TestJSONRoundTrip(t *testing.T) {
	r := NewRequest(MethodPut, "http://example.com/user")
	r.SetParam("client_id", "1234")
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	data := user{Name: "John", Surname: "Smith"}
	assert.NoError(t, r.SetJSON(data))

	v, _ := r.Header("Content-Type")
	assert.Equal(t, MIMEApplicationJSON, v)

	var extracted user
	assert.NoError(t, r.JSON(&extracted))
	assert.Equal(t, data, extracted)
}

func TestSetJSONForcesContentType(t *testing.T) {
	m := NewMessage()
	m.SetHeader(HeaderContentType, "text/plain")
	assert.NoError(t, m.SetJSON(map[string]string{"k": "v"}))

	v, _ := m.Header(HeaderContentType)
	assert.Equal(t, MIMEApplicationJSON, v)
}

func TestSetJSONIndented(t *testing.T) {
	m := NewMessage()
	assert.NoError(t, m.SetJSON(user{Name: "John", Surname: "Smith"}))

	b, err := m.BodyBytes()
	assert.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"John\",\n    \"surname\": \"Smith\"\n}", string(b))
}

func TestJSONErrors(t *testing.T) {
	m := NewMessage()

	var out user
	assert.Equal(t, ErrNoBody, m.JSON(&out))

	m.SetBody("{not json")
	assert.Error(t, m.JSON(&out))
}
