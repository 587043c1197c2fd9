// Package openai implements the ai interfaces against OpenAI-compatible
// embedding APIs via langchaingo. It works with any service exposing the
// OpenAI embeddings endpoint, including Ollama, LocalAI, and vLLM.
package openai
