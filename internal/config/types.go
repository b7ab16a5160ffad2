package config

type Credentials struct {
	User     string `hcl:"user"`
	Password string `hcl:"password"`
}

type Host struct {
	Hostname string `hcl:"hostname"`
	Port     string `hcl:"port"`
}

type Postgres struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	Database    string `hcl:"database"`
	SSLMode     string `hcl:"sslMode"`
}

type MySQL struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	Database    string `hcl:"database"`
}

type Amqp struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	VirtualHost string `hcl:"virtualHost"`
}

type MongoDB struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	Database    string `hcl:"database"`
	URL         string `hcl:"url"`
}

type Redis struct {
	Host     `hcl:",squash"`
	Password string `hcl:"password"`
}

type SMTP struct {
	Host `hcl:",squash"`
}

type HTTP struct {
	URL          string            `hcl:"url"`
	Method       string            `hcl:"method"`
	Headers      map[string]string `hcl:"headers"`
	Timeout      string            `hcl:"timeout"`
	ExpectStatus string            `hcl:"expectStatus"`
}

type Check struct {
	Name       string    `hcl:",key"`
	Wait       bool      `hcl:"wait"`
	Filesystem string    `hcl:"filesystem"`
	Postgres   *Postgres `hcl:"postgres"`
	MySQL      *MySQL    `hcl:"mysql"`
	Redis      *Redis    `hcl:"redis"`
	MongoDB    *MongoDB  `hcl:"mongodb"`
	Amqp       *Amqp     `hcl:"amqp"`
	HTTP       *HTTP     `hcl:"http"`
	SMTP       *SMTP     `hcl:"smtp"`
}

type Backend struct {
	URL string `hcl:"url"`
}

type Scaffold struct {
	Target    string `hcl:"target"`
	Overwrite bool   `hcl:"overwrite"`
}

type Hellostack struct {
	Backend  *Backend  `hcl:"backend"`
	Scaffold *Scaffold `hcl:"scaffold"`
	Checks   []Check   `hcl:"check"`
}
