package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func validationPrompt(fields map[string]string) string {
	// json.Marshal sorts map keys, keeping the prompt deterministic.
	data, _ := json.Marshal(fields)
	return fmt.Sprintf("Analyze following data and check if its fields contains offensive language: %s."+
		"Format your response in JsonFormat. It must contain 'result' field, which will contain "+
		"boolean value of this check and 'failed_fields' field which will contain name of "+
		"fields, that failed check", data)
}

func generationPrompt(postText, commentText string) string {
	return fmt.Sprintf("You an author of this post: %s. Generate answer to following user comment: %s."+
		"Your response should be related to this comment and your post. Response should be "+
		"less than 1000 characters", postText, commentText)
}

// extractJSON cuts the JSON object out of a model answer that may wrap it in
// prose or a markdown fence.
func extractJSON(response string) string {
	opening := strings.Index(response, "{")
	closing := strings.LastIndex(response, "}")
	if opening == -1 || closing == -1 || closing < opening {
		return response
	}
	return response[opening : closing+1]
}
