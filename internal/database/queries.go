package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	roomSelect = "SELECT r.id, r.name, r.description, r.host_id, " +
		"COALESCE(NULLIF(a.name, ''), a.email, ''), r.topic_id, COALESCE(t.name, ''), " +
		"r.created_at, r.updated_at FROM rooms r " +
		"LEFT JOIN accounts a ON r.host_id = a.id " +
		"LEFT JOIN topics t ON r.topic_id = t.id"

	messageSelect = "SELECT m.id, m.user_id, COALESCE(NULLIF(a.name, ''), a.email), " +
		"m.room_id, r.name, m.body, m.created_at, m.updated_at FROM messages m " +
		"JOIN accounts a ON m.user_id = a.id " +
		"JOIN rooms r ON m.room_id = r.id"

	// Rooms and messages list most recently updated first, ties broken by
	// most recently created first.
	roomOrder    = " ORDER BY r.updated_at DESC, r.created_at DESC"
	messageOrder = " ORDER BY m.updated_at DESC, m.created_at DESC"
)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(q string) string {
	return "%" + escapeLike(q) + "%"
}

func (db *PgStudyRepository) CreateAccount(params CreateAccountParams) (User, error) {
	now := time.Now().UTC()
	res := db.conn.QueryRow(
		"INSERT INTO accounts (email, password_hash, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, email, name, bio, avatar, created_at, updated_at",
		params.Email,
		params.PasswordHash,
		now,
		now,
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgStudyRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"UPDATE accounts SET name = $2, bio = $3, avatar = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, email, name, bio, avatar, created_at, updated_at",
		params.UserId,
		params.Name,
		params.Bio,
		params.Avatar,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgStudyRepository) GetAccountById(id int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, name, bio, avatar, created_at, updated_at FROM accounts "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgStudyRepository) GetAccountByEmail(email string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, name, bio, avatar, password_hash, created_at, updated_at "+
			"FROM accounts WHERE email = $1 LIMIT 1",
		email,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

// GetOrCreateTopic returns the topic with the given name, inserting it first
// if absent. The conflict clause makes the lookup-or-insert atomic under
// concurrent requests. Names are matched case-sensitively.
func (db *PgStudyRepository) GetOrCreateTopic(name string) (Topic, error) {
	row := db.conn.QueryRow(
		"INSERT INTO topics (name) VALUES ($1) "+
			"ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name "+
			"RETURNING id, name",
		name,
	)

	var t Topic
	err := row.Scan(&t.Id, &t.Name)

	return t, err
}

func (db *PgStudyRepository) ListTopics() ([]Topic, error) {
	rows, err := db.conn.Query("SELECT id, name FROM topics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.Id, &t.Name); err != nil {
			return nil, err
		}

		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (db *PgStudyRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	now := time.Now().UTC()
	res := db.conn.QueryRow(
		"INSERT INTO rooms (name, description, host_id, topic_id, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, name, description, host_id, topic_id, created_at, updated_at",
		params.Name,
		params.Description,
		params.HostId,
		params.TopicId,
		now,
		now,
	)

	var room Room
	err := res.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&room.HostId,
		&room.TopicId,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	return room, err
}

func (db *PgStudyRepository) GetRoomById(id int) (Room, error) {
	row := db.conn.QueryRow(roomSelect+" WHERE r.id = $1 LIMIT 1", id)
	return scanRoom(row)
}

func (db *PgStudyRepository) UpdateRoom(params UpdateRoomParams) (Room, error) {
	res := db.conn.QueryRow(
		"UPDATE rooms SET name = $2, description = $3, topic_id = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, name, description, host_id, topic_id, created_at, updated_at",
		params.RoomId,
		params.Name,
		params.Description,
		params.TopicId,
		time.Now().UTC(),
	)

	var room Room
	err := res.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&room.HostId,
		&room.TopicId,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	return room, err
}

// DeleteRoom removes the room; its messages and participant rows go with it
// via the schema's cascade rules.
func (db *PgStudyRepository) DeleteRoom(id int) error {
	_, err := db.conn.Exec("DELETE FROM rooms WHERE id = $1", id)
	return err
}

// SearchRooms returns rooms whose topic name, room name or description
// contains q case-insensitively. An empty q matches every room.
func (db *PgStudyRepository) SearchRooms(q string) ([]Room, error) {
	rows, err := db.conn.Query(
		roomSelect+
			" WHERE t.name ILIKE $1 OR r.name ILIKE $1 OR r.description ILIKE $1"+
			roomOrder,
		containsPattern(q),
	)
	if err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (db *PgStudyRepository) ListRoomsByHost(userId int) ([]Room, error) {
	rows, err := db.conn.Query(roomSelect+" WHERE r.host_id = $1"+roomOrder, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRooms(rows)
}

// AddParticipant records that the user has posted in the room. Re-adding an
// existing participant is a no-op.
func (db *PgStudyRepository) AddParticipant(roomId, userId int) error {
	_, err := db.conn.Exec(
		"INSERT INTO room_participants (room_id, user_id) VALUES ($1, $2) "+
			"ON CONFLICT DO NOTHING",
		roomId,
		userId,
	)

	return err
}

func (db *PgStudyRepository) GetParticipants(roomId int) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT a.id, a.email, a.name, a.avatar FROM room_participants p "+
			"JOIN accounts a ON p.user_id = a.id WHERE p.room_id = $1",
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Id, &u.Email, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}

		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *PgStudyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	now := time.Now().UTC()
	res := db.conn.QueryRow(
		"INSERT INTO messages (user_id, room_id, body, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, user_id, room_id, body, created_at, updated_at",
		params.UserId,
		params.RoomId,
		params.Body,
		now,
		now,
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.UserId,
		&msg.RoomId,
		&msg.Body,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)

	return msg, err
}

func (db *PgStudyRepository) GetMessageById(id int) (Message, error) {
	row := db.conn.QueryRow(messageSelect+" WHERE m.id = $1 LIMIT 1", id)

	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.UserId,
		&msg.UserName,
		&msg.RoomId,
		&msg.RoomName,
		&msg.Body,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)

	return msg, err
}

func (db *PgStudyRepository) DeleteMessage(id int) error {
	_, err := db.conn.Exec("DELETE FROM messages WHERE id = $1", id)
	return err
}

func (db *PgStudyRepository) ListMessagesByRoom(roomId int) ([]Message, error) {
	rows, err := db.conn.Query(messageSelect+" WHERE m.room_id = $1"+messageOrder, roomId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (db *PgStudyRepository) ListMessagesByAuthor(userId int) ([]Message, error) {
	rows, err := db.conn.Query(messageSelect+" WHERE m.user_id = $1"+messageOrder, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// SearchMessagesByTopic returns messages whose room's topic name contains q
// case-insensitively. Note this filters by topic only, not by room name or
// description, unlike SearchRooms. Rooms without a topic never match.
func (db *PgStudyRepository) SearchMessagesByTopic(q string) ([]Message, error) {
	rows, err := db.conn.Query(
		messageSelect+
			" JOIN topics t ON r.topic_id = t.id WHERE t.name ILIKE $1"+
			messageOrder,
		containsPattern(q),
	)
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (Room, error) {
	var (
		room    Room
		hostId  sql.NullInt64
		topicId sql.NullInt64
	)

	err := row.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&hostId,
		&room.HostName,
		&topicId,
		&room.TopicName,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return Room{}, err
	}

	room.HostId = int(hostId.Int64)
	room.TopicId = int(topicId.Int64)

	return room, nil
}

func scanRooms(rows *sql.Rows) ([]Room, error) {
	var rooms []Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var msg Message
		err := rows.Scan(
			&msg.Id,
			&msg.UserId,
			&msg.UserName,
			&msg.RoomId,
			&msg.RoomName,
			&msg.Body,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}

		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
