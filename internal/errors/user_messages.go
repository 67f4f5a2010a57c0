package errors

// User-friendly error messages
const (
	MsgValidation            = "Validation error"
	MsgUnauthorized          = "Authentication required"
	MsgForbidden             = "You do not have access to this resource"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgPasswordResetRequired = "This account was created for you automatically. Please reset your password before logging in."
	MsgUserNotFound          = "User not found"
	MsgEmailNotFound         = "Email not found"
	MsgAppointmentNotFound   = "Appointment not found"
	MsgEmailTaken            = "Email is already registered"
	MsgAlreadySubscribed     = "Email is already subscribed"
	MsgNoSubscribers         = "No subscribers found."
	MsgInvalidOTP            = "Invalid or expired OTP"
	MsgResetNotVerified      = "Please verify the OTP sent to your email before resetting your password"
	MsgRateLimited           = "Too many requests. Please wait a moment and try again."
	MsgServiceUnavailable    = "The service is temporarily unavailable. Please try again in a few minutes."
	MsgInternalError         = "Something went wrong on our end. Please try again later."
)
