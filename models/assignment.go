package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssignmentConfirmed  = "confirmed"
	AssignmentCheckedIn  = "checked_in"
	AssignmentCheckedOut = "checked_out"
	AssignmentCancelled  = "cancelled"
	AssignmentNoShow     = "no_show"
)

var assignmentStatuses = map[string]bool{
	AssignmentConfirmed:  true,
	AssignmentCheckedIn:  true,
	AssignmentCheckedOut: true,
	AssignmentCancelled:  true,
	AssignmentNoShow:     true,
}

func IsValidAssignmentStatus(s string) bool { return assignmentStatuses[s] }

// GuestRoomAssignment is one guest stay in one room. For a given
// (hotel, room_number), non-cancelled assignments must never overlap on
// [check_in_time, check_out_time). TotalBillAmount starts at
// BaseBillAmount and only grows (amenity billing, explicit edits).
type GuestRoomAssignment struct {
	gorm.Model

	HotelID    uint   `json:"hotelId" gorm:"column:hotel_id;index"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;index;type:varchar(10)"`
	GuestNames string `json:"guestNames" gorm:"column:guest_names;type:text"`

	CheckInTime  time.Time `json:"checkInTime" gorm:"column:check_in_time"`
	CheckOutTime time.Time `json:"checkOutTime" gorm:"column:check_out_time"`

	BaseBillAmount  float64 `json:"baseBillAmount" gorm:"column:base_bill_amount;default:0"`
	TotalBillAmount float64 `json:"totalBillAmount" gorm:"column:total_bill_amount;default:0"`
	AmountPaid      float64 `json:"amountPaid" gorm:"column:amount_paid;default:0"`

	Status string `json:"status" gorm:"size:20;default:confirmed"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}

// ActiveNow reports whether the stay is checked in and the clock falls
// inside its half-open window.
func (a *GuestRoomAssignment) ActiveNow(now time.Time) bool {
	return a.Status == AssignmentCheckedIn &&
		!now.Before(a.CheckInTime) && now.Before(a.CheckOutTime)
}
