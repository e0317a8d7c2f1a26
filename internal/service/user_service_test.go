package service

import (
	"regexp"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/stretchr/testify/require"
)

var referralCodePattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

func (suite *ServiceTestSuite) TestRegisterAndLogin() {
	user, accessToken, err := suite.userService.Register(suite.ctx, " buyer@example.com ", "password123")
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), accessToken)
	require.Equal(suite.T(), "buyer@example.com", user.Email)
	require.False(suite.T(), user.IsAdmin)
	require.Regexp(suite.T(), referralCodePattern, user.ReferralCode)
	require.NotEqual(suite.T(), "password123", user.PasswordHash)

	_, _, err = suite.userService.Register(suite.ctx, "buyer@example.com", "other-password")
	suite.requireCode(err, apperr.ConflictCode)

	_, _, err = suite.userService.Register(suite.ctx, "", "password123")
	suite.requireCode(err, apperr.BadRequestCode)

	logged, accessToken, err := suite.userService.Login(suite.ctx, "buyer@example.com", "password123")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), user.ID, logged.ID)
	require.NotEmpty(suite.T(), accessToken)

	_, _, err = suite.userService.Login(suite.ctx, "buyer@example.com", "wrong")
	suite.requireCode(err, apperr.UnauthenticatedCode)

	_, _, err = suite.userService.Login(suite.ctx, "nobody@example.com", "password123")
	suite.requireCode(err, apperr.UnauthenticatedCode)
}

func (suite *ServiceTestSuite) TestReferralCodesAreUnique() {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		user := suite.createUser()
		require.Regexp(suite.T(), referralCodePattern, user.ReferralCode)
		require.False(suite.T(), seen[user.ReferralCode])
		seen[user.ReferralCode] = true
	}
}

func (suite *ServiceTestSuite) TestUpdateProfile() {
	user := suite.createUser()
	other := suite.createUser()

	name := "  neo  "
	updated, err := suite.userService.UpdateProfile(suite.ctx, user.ID, &name)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "neo", *updated.Username)

	_, err = suite.userService.UpdateProfile(suite.ctx, other.ID, &name)
	suite.requireCode(err, apperr.ConflictCode)

	blank := "   "
	_, err = suite.userService.UpdateProfile(suite.ctx, user.ID, &blank)
	suite.requireCode(err, apperr.UnprocessableCode)

	unchanged, err := suite.userService.UpdateProfile(suite.ctx, user.ID, nil)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "neo", *unchanged.Username)
}

func (suite *ServiceTestSuite) TestChangePassword() {
	user := suite.createUser()

	err := suite.userService.ChangePassword(suite.ctx, user.ID, "wrong-password", "new-password")
	suite.requireCode(err, apperr.BadRequestCode)

	err = suite.userService.ChangePassword(suite.ctx, user.ID, "password123", "short")
	suite.requireCode(err, apperr.BadRequestCode)

	require.NoError(suite.T(), suite.userService.ChangePassword(suite.ctx, user.ID, "password123", "new-password"))

	reloaded, err := suite.store.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), checkPassword("new-password", reloaded.PasswordHash))
}

func (suite *ServiceTestSuite) TestDeleteAccount() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")
	_, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)
	suite.addToCart(user.ID, product.ID, 1, "m")

	require.NoError(suite.T(), suite.userService.DeleteAccount(suite.ctx, user.ID))

	_, err = suite.userService.GetUser(suite.ctx, user.ID)
	suite.requireCode(err, apperr.NotFoundCode)

	orders, err := suite.orderService.ListUserOrders(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), orders)

	err = suite.userService.DeleteAccount(suite.ctx, user.ID)
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestAddresses() {
	user := suite.createUser()
	other := suite.createUser()

	_, err := suite.addressService.CreateAddress(suite.ctx, user.ID, AddressParams{Street: "Main 1", City: " "})
	suite.requireCode(err, apperr.BadRequestCode)
	require.Len(suite.T(), apperr.As(err).Messages, 3)

	address, err := suite.addressService.CreateAddress(suite.ctx, user.ID, AddressParams{
		Street: " Main 1 ", City: "Kazan", PostalCode: "420000", Country: "Russia",
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Main 1", address.Street)

	_, err = suite.addressService.UpdateAddress(suite.ctx, other.ID, address.ID, AddressParams{
		Street: "x", City: "x", PostalCode: "x", Country: "x",
	})
	suite.requireCode(err, apperr.NotFoundCode)

	updated, err := suite.addressService.UpdateAddress(suite.ctx, user.ID, address.ID, AddressParams{
		Street: "Main 2", City: "Kazan", PostalCode: "420000", Country: "Russia",
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Main 2", updated.Street)

	err = suite.addressService.DeleteAddress(suite.ctx, other.ID, address.ID)
	suite.requireCode(err, apperr.NotFoundCode)
	require.NoError(suite.T(), suite.addressService.DeleteAddress(suite.ctx, user.ID, address.ID))

	addresses, err := suite.addressService.ListAddresses(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), addresses)
}

func (suite *ServiceTestSuite) TestCards() {
	user := suite.createUser()

	_, err := suite.cardService.AddCard(suite.ctx, user.ID, CardParams{CardNumber: "1234", Expiry: "1/30"})
	suite.requireCode(err, apperr.BadRequestCode)
	require.Len(suite.T(), apperr.As(err).Messages, 2)

	card, err := suite.cardService.AddCard(suite.ctx, user.ID, CardParams{CardNumber: "1234 5678 9012 3456", Expiry: "12/2030"})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "1234567890123456", card.CardNumber)
	require.Equal(suite.T(), "•••• •••• •••• 3456", card.MaskedNumber())

	cards, err := suite.cardService.ListCards(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cards, 1)

	require.NoError(suite.T(), suite.cardService.DeleteCard(suite.ctx, user.ID, card.ID))
	err = suite.cardService.DeleteCard(suite.ctx, user.ID, card.ID)
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestSeedIsIdempotent() {
	existing := suite.createUser()
	seed := &config.SeedConfig{
		Categories: []config.SeedCategory{
			{Name: "Shirts", Slug: "shirts"},
			{Name: "Hats", Slug: "hats", Description: "head wear"},
		},
		Admins: []config.SeedAdmin{
			{Email: "root@example.com", Password: "password123", Username: "root"},
			{Email: existing.Email, Password: "ignored"},
		},
	}
	seeder := NewSeedService(suite.store, suite.userService)

	require.NoError(suite.T(), seeder.Seed(suite.ctx, seed))
	require.NoError(suite.T(), seeder.Seed(suite.ctx, seed))

	categories, err := suite.categoryService.ListCategories(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)

	root, err := suite.store.GetUserByEmail(suite.ctx, "root@example.com")
	require.NoError(suite.T(), err)
	require.True(suite.T(), root.IsAdmin)
	require.Equal(suite.T(), "root", *root.Username)

	promoted, err := suite.store.GetUserByID(suite.ctx, existing.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), promoted.IsAdmin)
}

func (suite *ServiceTestSuite) TestNewReferralCode() {
	for i := 0; i < 50; i++ {
		require.Regexp(suite.T(), referralCodePattern, newReferralCode())
	}
}

func (suite *ServiceTestSuite) TestCheckPassword() {
	user := suite.createUser()
	require.True(suite.T(), checkPassword("password123", user.PasswordHash))
	require.False(suite.T(), checkPassword("wrong", user.PasswordHash))
	require.NotEqual(suite.T(), "password123", user.PasswordHash)
}
