// Package openrouter talks to an OpenRouter-compatible chat-completions
// provider and relays its SSE stream to the browser as normalized
// prompt/content/error/done events. It is the only upstream adaptor; the
// provider base URL and model are configuration, not code.
package openrouter
