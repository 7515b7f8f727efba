package database

type StudyRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	UpdateAccount(params UpdateAccountParams) (User, error)
	GetAccountById(id int) (User, error)
	GetAccountByEmail(email string) (User, error)
	GetOrCreateTopic(name string) (Topic, error)
	ListTopics() ([]Topic, error)
	CreateRoom(params CreateRoomParams) (Room, error)
	GetRoomById(id int) (Room, error)
	UpdateRoom(params UpdateRoomParams) (Room, error)
	DeleteRoom(id int) error
	SearchRooms(q string) ([]Room, error)
	ListRoomsByHost(userId int) ([]Room, error)
	AddParticipant(roomId, userId int) error
	GetParticipants(roomId int) ([]User, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessageById(id int) (Message, error)
	DeleteMessage(id int) error
	ListMessagesByRoom(roomId int) ([]Message, error)
	ListMessagesByAuthor(userId int) ([]Message, error)
	SearchMessagesByTopic(q string) ([]Message, error)
}
