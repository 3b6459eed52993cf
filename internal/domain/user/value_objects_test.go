//go:build unit

package user_test

import (
	"testing"

	"testdrive-hub/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "有効なメールアドレスOK", input: "taro@example.jp"},
		{name: "前後の空白はトリム", input: "  taro@example.jp  "},
		{name: "空のメールアドレスNG", input: "", errIs: user.ErrInvalidEmail},
		{name: "無効な形式NG", input: "invalid-email", errIs: user.ErrInvalidEmail},
		{name: "@なしNG", input: "invalidemail.com", errIs: user.ErrInvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			email, err := user.NewEmail(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "taro@example.jp", email.Value())
		})
	}

	t.Run("大文字小文字を区別せず比較", func(t *testing.T) {
		email, err := user.NewEmail("Seller@Example.com")
		require.NoError(t, err)
		assert.True(t, email.SameAddress("seller@example.com "))
		assert.False(t, email.SameAddress("other@example.com"))
	})
}

func TestRole(t *testing.T) {
	for _, s := range []string{"buyer", "seller", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("viewer")
	require.ErrorIs(t, err, user.ErrInvalidRole)

	assert.True(t, user.Identity{Role: user.RoleSeller}.IsSeller())
	assert.True(t, user.Identity{Role: user.RoleAdmin}.IsSeller())
	assert.False(t, user.Identity{Role: user.RoleBuyer}.IsSeller())
}
