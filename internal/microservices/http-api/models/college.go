package models

type College struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:200;not null"`
	LeaderName  string `json:"leader_name" gorm:"size:200"`
	LeaderImage string `json:"leader_image"`

	Departments []Department `json:"departments" gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE;"`
}

func (College) TableName() string {
	return "colleges"
}

type Department struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CollegeID  int64  `json:"college" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:200;not null"`
	LeaderName string `json:"leader_name" gorm:"size:200"`
	Email      string `json:"email"`
	Phone      string `json:"phone" gorm:"size:20"`
}

func (Department) TableName() string {
	return "departments"
}
