// Package messages holds the user facing message catalogue returned in API envelopes.
package messages

const (
	TokenMismatch = "TOKEN MIS MATCH"
	TokenInvalid  = "TOKEN INVALID"
	TooManyTries  = "TOO MANY REQUESTS"
	InternalError = "INTERNAL SERVER ERROR"
	Unprocessable = "UNPROCESSABLE ENTITY"
)

const (
	LoginWrongPasswordOrUsername = "WRONG PASSWORD OR USERNAME"
	LoginSuccess                 = "LOGIN SUCCESS"
	LogoutSuccess                = "LOGOUT SUCCESS"
	SignupSuccess                = "SIGNUP SUCCESS"
)

const (
	UserGetMeInfoSuccess = "GET ME INFO SUCCESS"
	UserGetInfoSuccess   = "GET INFO USER SUCCESS"
	UserGetAllSuccess    = "GET ALL USER SUCCESS"
	UserNotFound         = "USER NOT FOUND"
	UserEmailUnique      = "EMAIL IS EXISTS"
	UserUpdateSuccess    = "UPDATE USER SUCCESS"
	UserUpdateFail       = "UPDATE USER FAIL"
	UserDeleteSuccess    = "DELETE USER SUCCESS"
	UserDeleteFail       = "DELETE USER FAIL"
	UserCreateSuccess    = "CREATE USER SUCCESS"
	UserCreateFail       = "CREATE USER FAIL"
)

const (
	CategoryNotFound          = "CATEGORY NOT FOUND"
	CategoryParentNotFound    = "PARENT CATEGORY NOT FOUND"
	CategoryCreateFail        = "CREATE CATEGORY FAIL"
	CategoryUpdateFail        = "UPDATE CATEGORY FAIL"
	CategoryDeleteFail        = "DELETE CATEGORY FAIL"
	CategoryDeleteHasChildren = "DELETE FAIL WITH SUBCATEGORIES"
	CategoryParentCycle       = "PARENT CATEGORY CREATES A CYCLE"
	CategoryNameUnique        = "NAME IS EXISTS"
	CategorySlugUnique        = "SLUG IS EXISTS"
	CategoryGetParentSuccess  = "GET PARENT CATEGORY SUCCESS"
	CategoryGetAllSuccess     = "GET ALL CATEGORY SUCCESS"
	CategoryCreateSuccess     = "CREATE CATEGORY SUCCESS"
	CategoryGetInfoSuccess    = "GET INFO CATEGORY SUCCESS"
	CategoryUpdateSuccess     = "UPDATE CATEGORY SUCCESS"
	CategoryDeleteSuccess     = "DELETE CATEGORY SUCCESS"
)
