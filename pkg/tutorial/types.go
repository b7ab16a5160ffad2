package tutorial

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockCode      BlockKind = "code"
	BlockCallout   BlockKind = "callout"
)

type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Block is one element of a step's content body. Which fields are set
// depends on Kind.
type Block struct {
	Kind BlockKind `json:"kind"`

	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	Tone  Tone   `json:"tone,omitempty"`

	Items   []string `json:"items,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`
	Start   int      `json:"start,omitempty"`

	Language string `json:"language,omitempty"`
	Sample   string `json:"sample,omitempty"`
	Code     string `json:"code,omitempty"`
}

type Step struct {
	Title  string  `json:"title"`
	Icon   string  `json:"icon"`
	Blocks []Block `json:"blocks"`
}

// Data is available to every template in the guide and its code samples.
type Data struct {
	BackendURL  string
	ProjectName string
	Message     string
}

func DefaultData() Data {
	return Data{
		ProjectName: "hello-world-backend",
		Message:     "Hello World",
	}
}

func paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

func ordered(start int, items ...string) Block {
	return Block{Kind: BlockList, Ordered: true, Start: start, Items: items}
}

func bullets(items ...string) Block {
	return Block{Kind: BlockList, Items: items}
}

func code(sample, language string) Block {
	return Block{Kind: BlockCode, Sample: sample, Language: language}
}

func snippet(source, language string) Block {
	return Block{Kind: BlockCode, Code: source, Language: language}
}

func callout(tone Tone, title, text string) Block {
	return Block{Kind: BlockCallout, Tone: tone, Title: title, Text: text}
}
