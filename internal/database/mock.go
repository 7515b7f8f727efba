package database

import (
	"github.com/stretchr/testify/mock"
)

type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockStudyRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) GetAccountById(id int) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) GetAccountByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) GetOrCreateTopic(name string) (Topic, error) {
	args := m.Called(name)
	return args.Get(0).(Topic), args.Error(1)
}
func (m *MockStudyRepository) ListTopics() ([]Topic, error) {
	args := m.Called()
	return args.Get(0).([]Topic), args.Error(1)
}
func (m *MockStudyRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockStudyRepository) GetRoomById(id int) (Room, error) {
	args := m.Called(id)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockStudyRepository) UpdateRoom(params UpdateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockStudyRepository) DeleteRoom(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockStudyRepository) SearchRooms(q string) ([]Room, error) {
	args := m.Called(q)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockStudyRepository) ListRoomsByHost(userId int) ([]Room, error) {
	args := m.Called(userId)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockStudyRepository) AddParticipant(roomId, userId int) error {
	args := m.Called(roomId, userId)
	return args.Error(0)
}
func (m *MockStudyRepository) GetParticipants(roomId int) ([]User, error) {
	args := m.Called(roomId)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockStudyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockStudyRepository) GetMessageById(id int) (Message, error) {
	args := m.Called(id)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockStudyRepository) DeleteMessage(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockStudyRepository) ListMessagesByRoom(roomId int) ([]Message, error) {
	args := m.Called(roomId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockStudyRepository) ListMessagesByAuthor(userId int) ([]Message, error) {
	args := m.Called(userId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockStudyRepository) SearchMessagesByTopic(q string) ([]Message, error) {
	args := m.Called(q)
	return args.Get(0).([]Message), args.Error(1)
}
