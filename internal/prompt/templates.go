package prompt

const defaultSystemTemplate = `
You are a {{.Learn}} language teacher and you are chatting with an {{.Clarification}} user. You will be having conversations with the {{.Clarification}} user so that he learns how to engage in a conversation in {{.Learn}}. The tone should be {{.Tone}}.{{if .Topics}} Some topics you could talk about could be: {{.Topics}}, however the conversation can also deviate from these topics.{{end}}
`

const defaultCorrectionTemplate = `
sentence: {{.Sentence}}
Correct the {{.Learn}} sentence if the sentence is wrong.
`

const defaultClarificationTemplate = `
AI teacher's sentence: "{{.Reply}}"

I have some questions regarding the AI teacher's {{.Learn}} sentence:
{{.Questions}}

Please answer to my questions in {{.Clarification}}. It is very important that you answer in {{.Clarification}}.
`

const defaultVocabularyTemplate = `

words to translate: {{.Words}}

Translate the words from {{.Learn}} to {{.Clarification}}. 

I want the output as an array of four elements for each word: 

[[word1_to_translate, translated_word1, example_of_sentence1, translation_of_example_of_sentence1], [word2_to_translate, translated_word2, example_of_sentence2, translation_of_example_of_sentence2], ...]

In the example_of_sentence you must invent a sentence that contains the word_to_translate.

THE OUTPUT MUST STRICTLY BE AN ARRAY, NOTHING MORE! 
ALL of the variables in the array must be contained in double quotation marks! So below an example of how it should look like:

{{.Example}}
As you can see, quotation marks are around ALL elements of array.
In the example words are translated from {{.Learn}} to {{.ExampleTarget}}. Of course you will translate instead from {{.Learn}} to {{.Clarification}}
`

type systemData struct {
	Learn         string
	Clarification string
	Tone          string
	Topics        string
}

type correctionData struct {
	Sentence string
	Learn    string
}

type clarificationData struct {
	Reply         string
	Questions     string
	Learn         string
	Clarification string
}

type vocabularyData struct {
	Words         string
	Learn         string
	Clarification string
	Example       string
	ExampleTarget string
}
