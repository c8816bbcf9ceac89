package constant

type ContextKey string

// UserIDKey carries the authenticated user's id through request contexts.
const UserIDKey ContextKey = "user_id"
