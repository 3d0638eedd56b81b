package spec

type TopicSpec struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	Partitions int32  `yaml:"partitions"`
	KeySerde   string `yaml:"key_serde"`
	ValueSerde string `yaml:"value_serde"`
}

type RouteSpec struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Transform string `yaml:"transform"` // "echo", "uppercase", "reverse"
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Topics []TopicSpec `yaml:"topics"`
	Routes []RouteSpec `yaml:"routes"`

	Transport struct {
		Config string `yaml:"config"` // optional, resolved relative to the harness file
	} `yaml:"transport"`

	MetricsPort int `yaml:"metrics_port"`
}
