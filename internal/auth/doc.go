// Package auth provides authentication for the application.
//
// Every /api route except register, login and csrf requires an authenticated
// caller. Two methods are accepted:
//   - Session cookies (scs), started by POST /api/register or POST /api/login
//   - Bearer tokens (HS256 JWT) issued by POST /api/auth/token
//
// Passwords are stored as bcrypt hashes. Cookie-authenticated unsafe requests
// must carry the token from GET /api/csrf in the X-CSRF-Token header.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Signs CSRF cookies and JWTs; auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_TOKEN_EXPIRY=720h              # Bearer token expiry (30 days default)
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_MIN_PASSWORD_LENGTH=12         # Minimum password length in characters
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	SESSION_REDIS_URL=redis://...       # Keep sessions in Redis instead of the database
//
// # Usage
//
//	authService := auth.NewService(store, cfg.Auth)
//	sessions := auth.NewSessionManager(sessionStore, cfg.Auth)
//	tokens := auth.NewTokenIssuer(secret, cfg.Auth.TokenExpiry)
//	router.Use(sessions.SessionLoadSave())
//	router.Use(auth.NewMiddleware(authService, sessions, tokens).Handler())
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
