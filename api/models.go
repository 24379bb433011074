package api

import "time"

// Response is the envelope every PodMixer API endpoint answers with.
type Response[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Podcast is a source feed whose new episodes are republished.
type Podcast struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Active      bool      `json:"active"`
	LastPubDate time.Time `json:"last_pub_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Feed is the metadata of the generated RSS feeds.
type Feed struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Explicit    bool   `json:"explicit"`
	Keywords    string `json:"keywords"`
}

// Telegram holds the bot settings used to post new episodes.
type Telegram struct {
	Token    string `json:"token"`
	ChatID   string `json:"chat_id"`
	ThreadID string `json:"thread_id"`
	Template string `json:"template"`
	Active   bool   `json:"active"`
}

// Twitter holds the OAuth2 app settings used to post new episodes.
type Twitter struct {
	Active       bool   `json:"active"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Template     string `json:"template"`
}

// Credentials is the login request body.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}
