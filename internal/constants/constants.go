package constants

const (
	//分頁
	DefaultPagingSize int = 12
	DefaultPaging     int = 1
	MaxPagingSize     int = 100
	DefaultNewLimit   int = 10
)

type SortOrderEnum string

const (
	SortOrderAsc  SortOrderEnum = "asc"
	SortOrderDesc SortOrderEnum = "desc"
)

func IsValidSortOrderEnum(order string) bool {
	switch SortOrderEnum(order) {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

// 購物車尺寸
var AllowedSizes = []string{"s", "m", "l", "xl"}

func IsValidSize(size string) bool {
	for _, s := range AllowedSizes {
		if s == size {
			return true
		}
	}
	return false
}

// 配送方式
type ShippingMethod string

const (
	ShippingPochta ShippingMethod = "pochta"
	ShippingCdek   ShippingMethod = "cdek"
)

func IsValidShippingMethod(method string) bool {
	switch ShippingMethod(method) {
	case ShippingPochta, ShippingCdek:
		return true
	default:
		return false
	}
}

// 推薦獎勵 百分比
const ReferralBonusPercent int64 = 10

const (
	ReferralCodeLength      = 8
	ReferralCodeMaxAttempts = 5
	ReferralCodeAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
)

const (
	MinPasswordLength   = 8
	MaxReviewCommentLen = 1000
)

var AllowedImageExtensions = []string{"png", "jpg", "jpeg", "gif"}
