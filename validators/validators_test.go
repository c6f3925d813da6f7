package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("jane@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("Jane <jane@example.com>"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator(strings.Repeat("a", 250)+"@x.io"), ErrEmailTooLong)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("long enough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
	assert.ErrorIs(t, PasswordValidator("bell\acharacter"), ErrPasswordInvalid)
}

type sample struct {
	FullName string `json:"fullName" binding:"required"`
	Age      int    `json:"age" binding:"gte=0,lte=150"`
	Kind     string `json:"kind" binding:"omitempty,oneof=a b"`
}

func TestBindErrorUsesJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	bind := func(body string) *apperr.Error {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var s sample
		err := c.ShouldBindJSON(&s)
		require.Error(t, err)
		return BindError(err)
	}

	e := bind(`{"age": 200, "kind": "c"}`)
	assert.ErrorIs(t, e, apperr.ErrValidation)
	assert.Equal(t, "This field is required", e.Details["fullName"])
	assert.Equal(t, "Must be less than or equal to 150", e.Details["age"])
	assert.Equal(t, "Must be one of: a b", e.Details["kind"])

	e = bind(`{not json`)
	assert.ErrorIs(t, e, apperr.ErrValidation)
	assert.Contains(t, e.Details, "body")
}
