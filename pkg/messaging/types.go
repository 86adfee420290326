package messaging

type ChangeTopic string

const (
	AttributesChanged ChangeTopic = "attribute_change"
)

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}
