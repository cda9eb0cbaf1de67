package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields" : [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "size", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "user_id", "type": "string"},
		{"name": "occurred_at_ms", "type": "long"}
	]
}`

type ClientEventV1 struct {
	EventType    string `avro:"event_type"`
	ProductID    string `avro:"product_id"`
	Size         string `avro:"size"`
	Quantity     int    `avro:"quantity"`
	UserID       string `avro:"user_id"`
	OccurredAtMS int64  `avro:"occurred_at_ms"`
}
