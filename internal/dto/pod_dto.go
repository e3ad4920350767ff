package dto

type PodResponse struct {
	Id        int      `json:"id"`
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	TimeSlots []string `json:"timeSlots"`
}

type BookPodRequest struct {
	PodId    int    `json:"-"`
	UserId   string `json:"userId"`
	TimeSlot string `json:"timeSlot" validate:"required"`
}

type BookPodResponse struct {
	BookingId string `json:"bookingId"`
	PodId     int    `json:"podId"`
	TimeSlot  string `json:"timeSlot"`
}
