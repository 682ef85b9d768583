// Package processing implements the request pipeline for the stanza server.
// It composes prompts from user input, drains the streamed output of the
// text generation service, and trims the result to complete sentences.
package processing

// Request represents an incoming prediction request. All fields are free
// text; absent parameters default to the empty string.
type Request struct {
	// Input is the user-supplied text to operate on
	Input string `json:"input"`

	// Instruction tells the model what to do with the input
	Instruction string `json:"instruction"`

	// Model identifies the model version at the generation service
	Model string `json:"model"`
}

// Response represents the processed output returned to the client.
type Response struct {
	// Response contains zero or more complete sentences
	Response string `json:"response"`
}
