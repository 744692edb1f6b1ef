package switchback

type Key string

const (
	// BodyKey stashes the decoded JSON body of an HTTP request.
	BodyKey Key = "BodyKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// TransactionIDKey stashes the transaction ID tracking an HTTP request.
	TransactionIDKey Key = "TransactionIDKey"
)

// TransactionIDHeader carries the transaction ID on requests and responses.
const TransactionIDHeader = "X-Transaction-Id"

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}
