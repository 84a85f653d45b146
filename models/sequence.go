package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TokenTag is one surface token paired with its language tag.
type TokenTag struct {
	Token string `bson:"token" json:"token"`
	Tag   string `bson:"tag" json:"tag"`
}

// Sequence is one corpus line after decoding, in token order.
type Sequence []TokenTag

func (s Sequence) Tokens() []string {
	out := make([]string, len(s))
	for i, tt := range s {
		out[i] = tt.Token
	}
	return out
}

func (s Sequence) Tags() []string {
	out := make([]string, len(s))
	for i, tt := range s {
		out[i] = tt.Tag
	}
	return out
}

type StoredLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Corpus    string             `bson:"corpus" json:"corpus"`
	LineNo    int                `bson:"line_no" json:"line_no"`
	Raw       string             `bson:"raw" json:"raw"`
	Tokens    []TokenTag         `bson:"tokens" json:"tokens"`
	CreatedAt primitive.DateTime `bson:"created_at" json:"created_at"`
}
