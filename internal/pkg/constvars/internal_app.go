package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CLIENT_IP_KEY            ContextKey = "client_ip"
	CONTEXT_USER_ID_KEY              ContextKey = "user_id"
	CONTEXT_USER_ROLE_KEY            ContextKey = "user_role"
)

const (
	REQUEST_ID_PREFIX = "HBS_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&size=%d"
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)

const (
	RolePatient      = "PATIENT"
	RoleDoctor       = "DOCTOR"
	RoleAdmin        = "ADMIN"
	RoleReceptionist = "RECEPTIONIST"
	RoleInternal     = "INTERNAL"
)
