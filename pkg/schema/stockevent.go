package schema

const StockEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "products",
	"name": "stock_event",
	"fields" : [
		{"name": "reservation_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "kind", "type": "string"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// StockEventV1 is the wire form of a stock operation notification.
// OccurredAt is unix milliseconds.
type StockEventV1 struct {
	ReservationID string `avro:"reservation_id"`
	ProductID     string `avro:"product_id"`
	Quantity      int64  `avro:"quantity"`
	Kind          string `avro:"kind"`
	OccurredAt    int64  `avro:"occurred_at"`
}
