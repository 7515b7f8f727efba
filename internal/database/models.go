package database

import "time"

type User struct {
	Id           int
	Email        string
	Name         string
	Bio          string
	Avatar       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Topic struct {
	Id   int
	Name string
}

// Room carries the topic and host display columns from the listing joins so
// templates don't have to look them up per row. HostId is zero when the host
// account has been removed.
type Room struct {
	Id          int
	Name        string
	Description string
	HostId      int
	HostName    string
	TopicId     int
	TopicName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Message struct {
	Id        int
	UserId    int
	UserName  string
	RoomId    int
	RoomName  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateAccountParams struct {
	Email        string
	PasswordHash string
}

type UpdateAccountParams struct {
	UserId int
	Name   string
	Bio    string
	Avatar string
}

type CreateRoomParams struct {
	Name        string
	Description string
	HostId      int
	TopicId     int
}

type UpdateRoomParams struct {
	RoomId      int
	Name        string
	Description string
	TopicId     int
}

type CreateMessageParams struct {
	UserId int
	RoomId int
	Body   string
}
