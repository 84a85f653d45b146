// Package lid holds the static wordlists for Spanish/English language
// identification of social media text. The lists are frequency-ranked,
// lowercase and diacritic-free, split into the 32 most frequent words
// and the ranks from 33 up.
package lid

import "strings"

// DefaultModelConfig is the default config path for ratio list models.
const DefaultModelConfig = "params/model1_defaults.cfg"

// TopBandSize is the number of ranks covered by the top band of a list.
const TopBandSize = 32

// WordRankList is an immutable frequency-ranked wordlist. Rank numbering
// starts at the list's base, so a list holding ranks 33 and up reports
// rank 33 for its first word.
type WordRankList struct {
	name  string
	base  int
	words []string
	ranks map[string]int
}

func NewWordRankList(name string, base int, words []string) *WordRankList {
	l := &WordRankList{
		name:  name,
		base:  base,
		words: make([]string, len(words)),
		ranks: make(map[string]int, len(words)),
	}
	copy(l.words, words)
	for i, w := range l.words {
		l.ranks[w] = base + i
	}
	return l
}

func (l *WordRankList) Name() string { return l.name }

func (l *WordRankList) Len() int { return len(l.words) }

// At returns the word at position i in rank order. It panics when i is
// out of range, same as a slice index.
func (l *WordRankList) At(i int) string { return l.words[i] }

// Rank returns the frequency rank of word, counted from the base of the
// list, and false when the word is not in the list.
func (l *WordRankList) Rank(word string) (int, bool) {
	r, ok := l.ranks[word]
	return r, ok
}

func (l *WordRankList) Contains(word string) bool {
	_, ok := l.ranks[word]
	return ok
}

// Words returns a copy of the list in rank order. Mutating the copy does
// not affect the list.
func (l *WordRankList) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

var (
	SpanishTop32  = NewWordRankList("spanish-top32", 1, spanishTop32)
	Spanish32Plus = NewWordRankList("spanish-32plus", TopBandSize+1, spanish32Plus)
	EnglishTop32  = NewWordRankList("english-top32", 1, englishTop32)
	English32Plus = NewWordRankList("english-32plus", TopBandSize+1, english32Plus)
)

// ByLanguage maps a language code or name to its two rank bands. It
// accepts "es", "spanish", "en" and "english", case-insensitively.
func ByLanguage(lang string) (top, rest *WordRankList, ok bool) {
	switch strings.ToLower(lang) {
	case "es", "spanish":
		return SpanishTop32, Spanish32Plus, true
	case "en", "english":
		return EnglishTop32, English32Plus, true
	}
	return nil, nil, false
}

var spanishTop32 = []string{
	"de", "la", "que", "el", "en", "y", "no", "es", "los", "un", "se", "por", "me", "para", "con",
	"lo", "te", "del", "las", "q", "una", "mi", "si", "al", "como", "ya", "tu", "pero", "esta",
	"su", "yo", "le",
}

var spanish32Plus = []string{
	"mas", "hay", "hoy", "cuando", "o", "este", "todo", "nos", "muy", "ser", "sin", "son", "d",
	"todos", "gracias", "mejor", "feliz", "eso", "solo", "jajaja", "ver", "tiene", "ahora",
	"quiero", "ni", "porque", "bien", "tengo", "vida", "estoy", "sus", "hace", "desde", "hasta",
	"tan", "siempre", "nada", "quien", "va", "mis", "dia", "hacer", "les", "ha", "xd", "fue",
	"dios", "buen", "donde", "x", "puede", "gente", "eres", "mucho", "bueno", "vamos", "ese",
	"voy", "amor", "soy", "nuevo", "algo", "tus", "esa", "saludos", "jaja", "nunca", "jajajaja",
	"sobre", "gran", "vez", "alguien", "buenos", "cada", "sea", "buena", "creo", "mundo", "cosas",
	"uno", "estas", "fin", "estar", "asi", "dice", "pa", "ti", "semana", "tiempo", "menos", "ir",
	"dos", "tener", "da", "hola", "casa", "tienes", "personas", "mal", "entre", "pues", "otra",
	"esto", "puedo", "e", "venezuela", "estamos", "tienen", "era", "buenas", "hora", "muchas",
	"noche", "contra", "espero", "otro", "nuestro", "k", "falta", "toda", "mismo", "verdad",
	"van", "antes", "pasa", "nadie", "decir", "poco", "cuenta", "persona", "igual", "amo",
	"todas", "excelente", "paso", "favor", "quiere", "gusta", "veces", "gobierno", "tanto",
	"nueva", "han", "dias", "san", "presidente", "t", "sabe", "grande", "trabajo", "nuestra",
	"saber", "parece", "sino", "tenemos", "sera", "estan", "puedes", "aqui", "somos", "parte",
	"viendo", "mil", "mujer", "vas", "sabes", "momento", "debe", "hombre", "jajajajaja", "unos",
	"dicen", "sigue", "amigos", "amigo", "final", "aun", "ke", "estos", "partido", "tal", "chile",
	"muchos", "tambien", "tarde", "ayer", "abrazo", "estado", "primer", "poder", "mejores",
	"aunque", "dormir", "dar", "programa", "felicidades", "viene", "horas", "deja", "pueden",
	"casi", "esos", "quieres", "navidad", "viernes", "seguir", "foto", "dijo", "mientras",
	"equipo", "ve", "luego", "mujeres", "ganas", "primera", "mucha", "hacen", "veo",
}

var englishTop32 = []string{
	"the", "to", "i", "in", "of", "and", "you", "for", "is", "on", "your", "it", "my", "with",
	"this", "at", "are", "that", "be", "just", "have", "new", "from", "not", "we", "will", "out",
	"what", "by", "can", "all", "how",
}

var english32Plus = []string{
	"if", "but", "so", "get", "do", "like", "more", "as", "about", "via", "when", "one", "an",
	"up", "our", "was", "or", "u", "check", "who", "they", "good", "free", "make", "people",
	"has", "now", "love", "know", "time", "want", "day", "see", "us", "best", "need", "go",
	"great", "video", "only", "he", "some", "today", "why", "there", "its", "than", "think",
	"life", "their", "am", "never", "his", "happy", "back", "should", "home", "really", "very",
	"here", "after", "got", "going", "first", "made", "facebook", "been", "would", "way", "over",
	"still", "world", "take", "find", "twitter", "posted", "work", "business", "please", "help",
	"money", "photo", "always", "thanks", "any", "much", "follow", "them", "most", "too", "come",
	"because", "every", "last", "online", "say", "live", "look", "news", "then", "off", "into",
	"right", "may", "where", "had", "hope", "her", "things", "someone", "did", "better", "year",
	"being", "next", "top", "marketing", "thank", "even", "give", "many", "could", "social",
	"looking", "use", "feel", "were", "let", "she", "blog", "big", "watch", "keep", "other",
	"real", "start", "read", "something", "man", "before", "getting", "own", "must", "those",
	"stop", "join", "everyone", "without", "does", "which", "win", "ur", "show", "down", "long",
	"try", "using", "two", "ever", "tell", "god", "learn", "these", "makes", "internet", "says",
	"media", "working", "lol", "days", "change", "another", "morning", "thing", "nice", "call",
	"friends", "week", "hey", "buy", "well", "making", "night", "while", "same", "wish",
	"support", "nothing", "doing", "few", "him", "also", "part", "bad", "through", "years",
	"little", "old", "liked", "site", "said", "against", "end", "everything", "having", "music",
	"google", "person", "phone", "hate", "iphone", "around", "believe", "im", "miss", "sure",
	"coming", "ask",
}
