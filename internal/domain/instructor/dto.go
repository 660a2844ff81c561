package instructor

// CreateRequest is the admin payload for adding an instructor
type CreateRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Bio   string `json:"bio" validate:"max=2000"`
}

// WindowRequest is the admin payload for creating or updating a window
type WindowRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,day_of_week"`
	StartTime   string `json:"start_time" validate:"required,time_of_day"`
	EndTime     string `json:"end_time" validate:"required,time_of_day"`
	IsAvailable *bool  `json:"is_available" validate:"required"`
}

// Response is the public instructor view
type Response struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// WindowResponse is the window view
type WindowResponse struct {
	ID          string `json:"id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

func toResponse(ins *Instructor) *Response {
	return &Response{
		ID:       ins.ID.String(),
		Name:     ins.Name,
		Bio:      ins.Bio.String,
		PhotoURL: ins.PhotoURL.String,
	}
}

func toWindowResponse(w *Window) *WindowResponse {
	return &WindowResponse{
		ID:          w.ID.String(),
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}
