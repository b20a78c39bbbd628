package middleware

const (
	KeyJwtSessionCookieName = "jwt_session"
	bearerPrefix            = "Bearer "
)
