package processing

// ComposePrompt builds the generation prompt from the instruction and input
// texts using a fixed template. Both arguments may be empty; no escaping,
// sanitization, or length limiting is performed, so embedded newlines pass
// through unmodified.
func ComposePrompt(instruction, input string) string {
	return "instruction: " + instruction + "\ninput: " + input + "\noutput:"
}
