package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type UserHandler struct {
	userService    service.IUserService
	addressService service.IAddressService
	cardService    service.ICardService
	orderService   service.IOrderService
}

func NewUserHandler(
	userService service.IUserService,
	addressService service.IAddressService,
	cardService service.ICardService,
	orderService service.IOrderService,
) *UserHandler {
	if userService == nil || addressService == nil || cardService == nil || orderService == nil {
		panic("user handler dependencies cannot be nil")
	}
	return &UserHandler{
		userService:    userService,
		addressService: addressService,
		cardService:    cardService,
		orderService:   orderService,
	}
}

func (u *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := u.userService.GetUser(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertUserToDTO(user))
}

func (u *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := u.userService.UpdateProfile(r.Context(), currentUserID(r), req.Username)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.UserMessageDTO{
		Message: "Profile updated successfully",
		User:    convertUserToDTO(user),
	})
}

func (u *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := u.userService.ChangePassword(r.Context(), currentUserID(r), req.CurrentPassword, req.NewPassword); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.Message(w, http.StatusOK, "Password updated successfully")
}

func (u *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := u.orderService.ListUserOrders(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrdersToDTO(orders))
}

func (u *UserHandler) ListPoints(w http.ResponseWriter, r *http.Request) {
	txns, err := u.userService.ListPointsHistory(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	res := make([]dto.PointsTransactionDTO, 0, len(txns))
	for i := range txns {
		res = append(res, convertPointsTransactionToDTO(&txns[i]))
	}
	response.SuccessJSON(w, res)
}

func (u *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := u.userService.DeleteAccount(r.Context(), currentUserID(r)); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

func toAddressParams(req dto.AddressRequestDTO) service.AddressParams {
	return service.AddressParams{
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
}

func (u *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := u.addressService.ListAddresses(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	res := make([]dto.AddressDTO, 0, len(addresses))
	for i := range addresses {
		res = append(res, convertAddressToDTO(&addresses[i]))
	}
	response.SuccessJSON(w, res)
}

func (u *UserHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := u.addressService.CreateAddress(r.Context(), currentUserID(r), toAddressParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.AddressMessageDTO{
		Message: "Address added",
		Address: convertAddressToDTO(address),
	})
}

func (u *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.AddressRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := u.addressService.UpdateAddress(r.Context(), currentUserID(r), id, toAddressParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.AddressMessageDTO{
		Message: "Address updated",
		Address: convertAddressToDTO(address),
	})
}

func (u *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := u.addressService.DeleteAddress(r.Context(), currentUserID(r), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

func (u *UserHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := u.cardService.ListCards(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	res := make([]dto.CardDTO, 0, len(cards))
	for i := range cards {
		res = append(res, convertCardToDTO(&cards[i]))
	}
	response.SuccessJSON(w, res)
}

func (u *UserHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req dto.CardRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := u.cardService.AddCard(r.Context(), currentUserID(r), service.CardParams{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
	})
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.CardMessageDTO{
		Message: "Card added",
		Card:    convertCardToDTO(card),
	})
}

func (u *UserHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := u.cardService.DeleteCard(r.Context(), currentUserID(r), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}
