package services

import (
	"fmt"
	"strings"

	"github.com/kunalverma/axon-go/internal/domain"
)

const stepBackTemplate = `You are an expert at query rewriting.
Your task is to take a user's question and generate a more general, "step-back" version of that question.
This new question will be used to retrieve relevant documents from a knowledge index.
By generating a broader question, you help the retriever find context that the specific question might miss.

Example:
User Question: "What projects are listed on Kunal's resume?"
Step-Back Question: "What is Kunal's general project experience and technical history?"

User Question: "What is Kunal's email address?"
Step-Back Question: "What are Kunal's contact details?"

Now, generate only the step-back question for this:
User Question: %s
Step-Back Question:`

const groundingTemplate = `You are 'Axon', a helpful AI assistant. Answer the user's *original question* based *only* on the
following context provided from their personal documents.
If you don't know the answer from the context,
clearly state that you don't have that information.

Context:
%s

Original Question:
%s

Answer:`

// stepBackPrompt asks the model for a broadened, topic-level reformulation.
func stepBackPrompt(question string) string {
	return fmt.Sprintf(stepBackTemplate, strings.TrimSpace(question))
}

// groundingPrompt combines the retrieved context with the original (narrow)
// question and instructs the model to answer only from that context.
func groundingPrompt(chunks []domain.Chunk, question string) string {
	return fmt.Sprintf(groundingTemplate, joinChunks(chunks), strings.TrimSpace(question))
}

func joinChunks(chunks []domain.Chunk) string {
	if len(chunks) == 0 {
		return "(no documents matched the query)"
	}
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}
