package models

import "time"

type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleSpecialist   Role = "SPECIALIST"
	RoleAdminSupport Role = "ADMIN_SUPPORT"
	RoleParent       Role = "PARENT"
	RoleStudent      Role = "STUDENT"
)

// TargetAll addresses a notice to every role.
const TargetAll = "ALL"

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      Role      `json:"role" firestore:"role"`
	Avatar    string    `json:"avatar" firestore:"avatar"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

type HealthEntry struct {
	Date       string `json:"date" firestore:"date"`
	Note       string `json:"note" firestore:"note"`
	RecordedBy string `json:"recordedBy" firestore:"recordedBy"`
}

type Student struct {
	// ID is the human-readable admission code (e.g. "BS-0007"); the auth
	// credential created for the student is tracked separately.
	ID            string        `json:"id" firestore:"id"`
	AuthUID       string        `json:"authUid" firestore:"authUid"`
	FullName      string        `json:"fullName" firestore:"fullName"`
	DateOfBirth   string        `json:"dateOfBirth" firestore:"dateOfBirth"`
	AssignedClass string        `json:"assignedClass" firestore:"assignedClass"`
	ParentID      string        `json:"parentId" firestore:"parentId"`
	ParentName    string        `json:"parentName" firestore:"parentName"`
	ParentEmail   string        `json:"parentEmail" firestore:"parentEmail"`
	ParentPhone   string        `json:"parentPhone" firestore:"parentPhone"`
	HealthHistory []HealthEntry `json:"healthHistory" firestore:"healthHistory"`
	TotalPaid     float64       `json:"totalPaid" firestore:"totalPaid"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt"`
}

type Staff struct {
	ID              string    `json:"id" firestore:"id"`
	FullName        string    `json:"fullName" firestore:"fullName"`
	Email           string    `json:"email" firestore:"email"`
	Phone           string    `json:"phone" firestore:"phone"`
	Position        string    `json:"position" firestore:"position"`
	AssignedClasses []string  `json:"assignedClasses" firestore:"assignedClasses"`
	Role            Role      `json:"role" firestore:"role"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}

type Parent struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	StudentID string    `json:"studentId" firestore:"studentId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// TrialMark is one prompt-level code recorded per trial in a session step.
type TrialMark string

const (
	MarkIndependent     TrialMark = "+"
	MarkIncorrect       TrialMark = "-"
	MarkVerbalPrompt    TrialMark = "VP"
	MarkGesturalPrompt  TrialMark = "GP"
	MarkModelPrompt     TrialMark = "MP"
	MarkPartialPhysical TrialMark = "PP"
	MarkFullPhysical    TrialMark = "FP"
)

// TrialsPerStep is the fixed trial count recorded for every session step.
const TrialsPerStep = 10

type ChainingMethod string

const (
	ChainingForward   ChainingMethod = "Forward"
	ChainingBackward  ChainingMethod = "Backward"
	ChainingTotalTask ChainingMethod = "Total Task"
)

type SessionStep struct {
	Description string      `json:"description" firestore:"description"`
	Trials      []TrialMark `json:"trials" firestore:"trials"`
}

type ProgramRequest struct {
	Program string `json:"program" firestore:"program"`
	Count   int    `json:"count" firestore:"count"`
}

type SessionLog struct {
	ID                string           `json:"id" firestore:"id"`
	StudentID         string           `json:"studentId" firestore:"studentId"`
	Date              string           `json:"date" firestore:"date"`
	TargetBehavior    string           `json:"targetBehavior" firestore:"targetBehavior"`
	Method            ChainingMethod   `json:"method" firestore:"method"`
	Steps             []SessionStep    `json:"steps" firestore:"steps"`
	ProgramRequests   []ProgramRequest `json:"programRequests" firestore:"programRequests"`
	IndependenceScore int              `json:"independenceScore" firestore:"independenceScore"`
	StaffID           string           `json:"staffId" firestore:"staffId"`
	CreatedAt         time.Time        `json:"createdAt" firestore:"createdAt"`
}

type MilestoneSection struct {
	Title string   `json:"title" firestore:"title"`
	Items []string `json:"items" firestore:"items"`
}

type MilestoneTemplate struct {
	ID       string             `json:"id" firestore:"id"`
	Label    string             `json:"label" firestore:"label"`
	MinAge   int                `json:"minAge" firestore:"minAge"`
	MaxAge   int                `json:"maxAge" firestore:"maxAge"`
	Sections []MilestoneSection `json:"sections" firestore:"sections"`
	RedFlags []string           `json:"redFlags" firestore:"redFlags"`
}

type MilestoneResult struct {
	Description string `json:"description" firestore:"description"`
	Achieved    bool   `json:"achieved" firestore:"achieved"`
}

type MilestoneResultSection struct {
	Title string            `json:"title" firestore:"title"`
	Items []MilestoneResult `json:"items" firestore:"items"`
}

// MilestoneRecord is one assessment sitting; never mutated after creation.
type MilestoneRecord struct {
	ID                string                   `json:"id" firestore:"id"`
	StudentID         string                   `json:"studentId" firestore:"studentId"`
	AgeCategory       string                   `json:"ageCategory" firestore:"ageCategory"`
	Sections          []MilestoneResultSection `json:"sections" firestore:"sections"`
	RedFlags          []MilestoneResult        `json:"redFlags" firestore:"redFlags"`
	OverallPercentage int                      `json:"overallPercentage" firestore:"overallPercentage"`
	RecordedBy        string                   `json:"recordedBy" firestore:"recordedBy"`
	CreatedAt         time.Time                `json:"createdAt" firestore:"createdAt"`
}

type ShopCategory string

const (
	ShopRequired ShopCategory = "Required"
	ShopOptional ShopCategory = "Optional"
)

type ShopItem struct {
	ID        string       `json:"id" firestore:"id"`
	Name      string       `json:"name" firestore:"name"`
	Price     float64      `json:"price" firestore:"price"`
	ImageURL  string       `json:"imageUrl" firestore:"imageUrl"`
	Category  ShopCategory `json:"category" firestore:"category"`
	Stock     int          `json:"stock" firestore:"stock"`
	CreatedAt time.Time    `json:"createdAt" firestore:"createdAt"`
}

// CartItem exists only in local session state until checkout snapshots it
// into an Order. CartID identifies the cart line, not the shop item.
type CartItem struct {
	ShopItem
	CartID   string `json:"cartId" firestore:"cartId"`
	Quantity int    `json:"quantity" firestore:"quantity"`
}

const OrderStatusUncollected = "Uncollected"

type Order struct {
	ID            string     `json:"id" firestore:"id"`
	UserID        string     `json:"userId" firestore:"userId"`
	StudentID     string     `json:"studentId" firestore:"studentId"`
	Items         []CartItem `json:"items" firestore:"items"`
	Total         float64    `json:"total" firestore:"total"`
	PaymentMethod string     `json:"paymentMethod" firestore:"paymentMethod"`
	Status        string     `json:"status" firestore:"status"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt"`
}

type NoticeReply struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"userId"`
	UserName  string    `json:"userName" firestore:"userName"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

type NoticeView struct {
	UserID   string    `json:"userId" firestore:"userId"`
	ViewedAt time.Time `json:"viewedAt" firestore:"viewedAt"`
}

type Notice struct {
	ID        string        `json:"id" firestore:"id"`
	Title     string        `json:"title" firestore:"title"`
	Content   string        `json:"content" firestore:"content"`
	Type      string        `json:"type" firestore:"type"`
	Target    string        `json:"target" firestore:"target"`
	AuthorID  string        `json:"authorId" firestore:"authorId"`
	Replies   []NoticeReply `json:"replies" firestore:"replies"`
	Views     []NoticeView  `json:"views" firestore:"views"`
	CreatedAt time.Time     `json:"createdAt" firestore:"createdAt"`
}

type Payment struct {
	ID         string    `json:"id" firestore:"id"`
	StudentID  string    `json:"studentId" firestore:"studentId"`
	Amount     float64   `json:"amount" firestore:"amount"`
	Method     string    `json:"method" firestore:"method"`
	Term       string    `json:"term" firestore:"term"`
	RecordedBy string    `json:"recordedBy" firestore:"recordedBy"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

type SystemLog struct {
	ID        string            `json:"id" firestore:"id"`
	UserID    string            `json:"userId" firestore:"userId"`
	UserName  string            `json:"userName" firestore:"userName"`
	Action    string            `json:"action" firestore:"action"`
	Detail    map[string]string `json:"detail" firestore:"detail"`
	CreatedAt time.Time         `json:"createdAt" firestore:"createdAt"`
}

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

type StaffApplication struct {
	ID        string    `json:"id" firestore:"id"`
	FullName  string    `json:"fullName" firestore:"fullName"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone" firestore:"phone"`
	Position  string    `json:"position" firestore:"position"`
	CoverNote string    `json:"coverNote" firestore:"coverNote"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

type StudentApplication struct {
	ID          string    `json:"id" firestore:"id"`
	ChildName   string    `json:"childName" firestore:"childName"`
	DateOfBirth string    `json:"dateOfBirth" firestore:"dateOfBirth"`
	ParentName  string    `json:"parentName" firestore:"parentName"`
	ParentEmail string    `json:"parentEmail" firestore:"parentEmail"`
	ParentPhone string    `json:"parentPhone" firestore:"parentPhone"`
	Concerns    string    `json:"concerns" firestore:"concerns"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

type Position struct {
	Name   string `json:"name" firestore:"name"`
	Active bool   `json:"active" firestore:"active"`
}

// Settings is the singleton configuration document. Every update to it is
// a partial merge, never an overwrite.
type Settings struct {
	Positions         []Position `json:"positions" firestore:"positions"`
	Classes           []string   `json:"classes" firestore:"classes"`
	FeesAmount        float64    `json:"feesAmount" firestore:"feesAmount"`
	CurrentTerm       string     `json:"currentTerm" firestore:"currentTerm"`
	NextTermStartDate string     `json:"nextTermStartDate" firestore:"nextTermStartDate"`
	DefaultTaskSteps  []string   `json:"defaultTaskSteps" firestore:"defaultTaskSteps"`
}
